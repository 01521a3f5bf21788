package expense

import (
	"context"
)

type StubExpenseRepository struct {
	nextId int
	data   map[int]map[int]Expense
}

func NewStubExpenseRepository() *StubExpenseRepository {
	return &StubExpenseRepository{data: map[int]map[int]Expense{}}
}

func (s *StubExpenseRepository) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	s.nextId++
	expense.ID = s.nextId
	if s.data[userId] == nil {
		s.data[userId] = map[int]Expense{}
	}
	s.data[userId][s.nextId] = expense
	return s.nextId, nil
}

func (s *StubExpenseRepository) GetAll(ctx context.Context, userId int) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data[userId]))
	for _, e := range s.data[userId] {
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *StubExpenseRepository) Get(ctx context.Context, userId int, expenseId int) (Expense, error) {
	e, ok := s.data[userId][expenseId]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return e, nil
}

func (s *StubExpenseRepository) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	if _, ok := s.data[userId][expense.ID]; !ok {
		return false, nil
	}
	s.data[userId][expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepository) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	if _, ok := s.data[userId][expenseId]; !ok {
		return false, nil
	}
	delete(s.data[userId], expenseId)
	return true, nil
}
