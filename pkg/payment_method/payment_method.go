package payment_method

type PaymentMethod struct {
	ID   int
	Name string
	Icon string
}
