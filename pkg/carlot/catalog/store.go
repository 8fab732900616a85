package catalog

import (
	"sync"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// store keeps cars in insertion order.
type store struct {
	mu    sync.RWMutex
	cars  map[string]dal.Car
	order []string

	objects map[string]object
	pending map[string]pendingUpload
}

type object struct {
	contentType string
	data        []byte
}

type pendingUpload struct {
	token       string
	contentType string
}

func newStore() *store {
	return &store{
		cars:    make(map[string]dal.Car),
		objects: make(map[string]object),
		pending: make(map[string]pendingUpload),
	}
}

func (s *store) list() []dal.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cars := make([]dal.Car, 0, len(s.order))
	for _, id := range s.order {
		cars = append(cars, s.cars[id])
	}
	return cars
}

func (s *store) get(id string) (dal.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	car, ok := s.cars[id]
	return car, ok
}

func (s *store) put(car dal.Car) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cars[car.CarID]; !ok {
		s.order = append(s.order, car.CarID)
	}
	s.cars[car.CarID] = car
}

// update applies fn to the stored car under the write lock.
func (s *store) update(id string, fn func(*dal.Car)) (dal.Car, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	car, ok := s.cars[id]
	if !ok {
		return dal.Car{}, false
	}
	fn(&car)
	s.cars[id] = car
	return car, true
}

func (s *store) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cars[id]; !ok {
		return false
	}
	delete(s.cars, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *store) expect(key string, p pendingUpload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key] = p
}

// accept stores data for key if token matches the pending upload.
func (s *store) accept(key, token, contentType string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[key]
	if !ok || p.token != token || p.contentType != contentType {
		return false
	}
	delete(s.pending, key)
	s.objects[key] = object{contentType: contentType, data: data}
	return true
}

func (s *store) object(key string) (object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[key]
	return o, ok
}
