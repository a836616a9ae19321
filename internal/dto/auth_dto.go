package dto

type SignupRequest struct {
	FullName    string  `json:"full_name" validate:"required,max=255"`
	Username    string  `json:"username" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Password    string  `json:"password" validate:"required,min=8"`
	DormitoryID *uint   `json:"dormitory_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest uses pointers so absent fields are left untouched.
type UpdateProfileRequest struct {
	FullName       *string `json:"full_name" form:"full_name" validate:"omitempty,max=255"`
	Username       *string `json:"username" form:"username" validate:"omitempty,max=255"`
	Email          *string `json:"email" form:"email" validate:"omitempty,email,max=255"`
	PhoneNumber    *string `json:"phone_number" form:"phone_number" validate:"omitempty,max=20"`
	DormitoryID    *uint   `json:"dormitory_id" form:"dormitory_id"`
	ProfilePicture *string `json:"profile_picture" form:"profile_picture" validate:"omitempty,max=255"`
	StudentID      *string `json:"student_id" form:"student_id" validate:"omitempty,max=255"`
	Bio            *string `json:"bio" form:"bio"`
	DateOfBirth    *string `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender" form:"gender" validate:"omitempty,max=255"`
	Language       *string `json:"language" form:"language" validate:"omitempty,max=255"`
	Timezone       *string `json:"timezone" form:"timezone" validate:"omitempty,max=255"`
}

// LanguageRequest sets only the interface language.
type LanguageRequest struct {
	Language string `json:"language" validate:"required,max=10"`
}

type UniversityOptionsQuery struct {
	UniversityID *uint `json:"university_id" query:"university_id"`
}

type UniversitySettingsRequest struct {
	UniversityID uint `json:"university_id" validate:"required,min=1"`
	DormitoryID  uint `json:"dormitory_id" validate:"required,min=1"`
}
