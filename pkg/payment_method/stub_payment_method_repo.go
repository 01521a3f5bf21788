package payment_method

import (
	"context"
)

type StubPaymentMethodRepository struct {
	nextId int
	data   map[int]map[int]PaymentMethod
}

func NewStubPaymentMethodRepository() *StubPaymentMethodRepository {
	return &StubPaymentMethodRepository{data: map[int]map[int]PaymentMethod{}}
}

func (s *StubPaymentMethodRepository) Store(ctx context.Context, userId int, method PaymentMethod) (int, error) {
	s.nextId++
	method.ID = s.nextId
	if s.data[userId] == nil {
		s.data[userId] = map[int]PaymentMethod{}
	}
	s.data[userId][s.nextId] = method
	return s.nextId, nil
}

func (s *StubPaymentMethodRepository) GetAll(ctx context.Context, userId int) ([]PaymentMethod, error) {
	methods := make([]PaymentMethod, 0, len(s.data[userId]))
	for _, m := range s.data[userId] {
		methods = append(methods, m)
	}
	return methods, nil
}

func (s *StubPaymentMethodRepository) Get(ctx context.Context, userId int, methodId int) (PaymentMethod, error) {
	m, ok := s.data[userId][methodId]
	if !ok {
		return PaymentMethod{}, ErrPaymentMethodNotFound
	}
	return m, nil
}

func (s *StubPaymentMethodRepository) Update(ctx context.Context, userId int, method PaymentMethod) (bool, error) {
	if _, ok := s.data[userId][method.ID]; !ok {
		return false, nil
	}
	s.data[userId][method.ID] = method
	return true, nil
}

func (s *StubPaymentMethodRepository) Delete(ctx context.Context, userId int, methodId int) (bool, error) {
	if _, ok := s.data[userId][methodId]; !ok {
		return false, nil
	}
	delete(s.data[userId], methodId)
	return true, nil
}
