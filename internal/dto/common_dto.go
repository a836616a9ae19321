package dto

// TagRef is the compact tag projection attached to product payloads.
type TagRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DormitoryRef is the compact dormitory projection attached to product cards.
type DormitoryRef struct {
	ID            uint   `json:"id"`
	DormitoryName string `json:"dormitory_name"`
	UniversityID  uint   `json:"university_id"`
}

// SellerRef is the public seller summary on product detail payloads.
type SellerRef struct {
	ID             uint    `json:"id"`
	FullName       string  `json:"full_name"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
}

type PageQuery struct {
	PerPage *int `json:"per_page" query:"per_page" validate:"omitempty,min=1,max=100"`
}
