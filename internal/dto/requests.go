package dto

// Pointer fields with `required` must be present but may be empty strings.

type UserCreate struct {
	Name     *string `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required"`
}

type UserLogin struct {
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"required"`
}

type PasswordUpdate struct {
	CurrentPassword *string `json:"current_password" binding:"required"`
	NewPassword     *string `json:"new_password" binding:"required"`
	ConfirmPassword *string `json:"confirm_password" binding:"required"`
}

type BookCreate struct {
	Title       *string `json:"title" binding:"required"`
	Author      *string `json:"author" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type LoanCreate struct {
	UserID             *uint  `json:"user_id" binding:"required"`
	BookID             *uint  `json:"book_id" binding:"required"`
	LoanDate           string `json:"loan_date" binding:"required,datetime=2006-01-02"`
	ExpectedReturnDate string `json:"expected_return_date" binding:"required,datetime=2006-01-02"`
}

type LoanReturn struct {
	RealReturnDate string `json:"real_return_date" binding:"required,datetime=2006-01-02"`
}

type FavoriteCreate struct {
	BookID *uint `json:"book_id" binding:"required"`
}

type TicketCreate struct {
	Name    *string `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Subject *string `json:"subject" binding:"required"`
	Message *string `json:"message" binding:"required"`
	UserID  *uint   `json:"user_id"`
}

type TicketUpdate struct {
	Status *string `json:"status" binding:"required"`
}

// Value dereferences a bound required field.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
