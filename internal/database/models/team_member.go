package models

// TeamMember represents a person who can be assigned to project phases
type TeamMember struct {
	BaseModel
	Email    string     `json:"email" gorm:"not null;size:200;uniqueIndex" validate:"required,email"`
	FullName string     `json:"full_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Role     MemberRole `json:"role" gorm:"type:varchar(50);default:'member'"`
	Area     string     `json:"area" gorm:"size:100"`
	IsActive bool       `json:"is_active" gorm:"default:true"`
}

// TableName returns the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}
