package profileservice

// Роли профилей
const (
	RoleAdmin    = "admin"
	RoleCoOwner  = "co_owner"
	RoleProspect = "prospect"
)

// Profile модель профиля из ProfileService
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// profilesResponse ответ на запрос списка профилей
type profilesResponse struct {
	Profiles []Profile `json:"profiles"`
}
