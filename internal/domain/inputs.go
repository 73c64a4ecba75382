package domain

type RegisterInput struct {
	Email       string
	Role        string
	DateOfBirth string
	Password    string
}

type LoginInput struct {
	Email    string
	Password string
}
