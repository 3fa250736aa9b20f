package payments

// BuyerInfo is the identity a gateway needs to open a hosted session.
type BuyerInfo struct {
	FullName    string
	Email       string
	Phone       string
	Address     string
	CourseTitle string
}
