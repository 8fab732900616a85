package main

import "github.com/nekruzvatanshoev/carlot/pkg/cmd"

func main() {
	cmd.Execute()
}
