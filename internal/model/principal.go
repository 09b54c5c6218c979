package model

// Principal 已登录用户，按角色区分为管理员与普通学员
type Principal interface {
	Role() UserRole
	ID() uint
	DisplayName() string
	isPrincipal()
}

type AdminPrincipal struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (p AdminPrincipal) Role() UserRole      { return Admin }
func (p AdminPrincipal) ID() uint            { return p.UserID }
func (p AdminPrincipal) DisplayName() string { return p.Username }
func (AdminPrincipal) isPrincipal()          {}

type LearnerPrincipal struct {
	UserID     uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

func (p LearnerPrincipal) Role() UserRole      { return StandardUser }
func (p LearnerPrincipal) ID() uint            { return p.UserID }
func (p LearnerPrincipal) DisplayName() string { return p.Username }
func (LearnerPrincipal) isPrincipal()          {}

// PrincipalFor 根据用户角色构造对应的 Principal
func PrincipalFor(u *User) Principal {
	if u.Role == Admin {
		return AdminPrincipal{UserID: u.ID, Username: u.Username, Email: u.Email}
	}
	return LearnerPrincipal{UserID: u.ID, Username: u.Username, Email: u.Email, Department: u.Department}
}

// PrincipalView 会话中保存的当前用户快照
type PrincipalView struct {
	ID         uint     `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	Department string   `json:"department,omitempty"`
}

func ViewOf(p Principal) PrincipalView {
	switch v := p.(type) {
	case AdminPrincipal:
		return PrincipalView{ID: v.UserID, Username: v.Username, Email: v.Email, Role: Admin}
	case LearnerPrincipal:
		return PrincipalView{ID: v.UserID, Username: v.Username, Email: v.Email, Role: StandardUser, Department: v.Department}
	}
	return PrincipalView{}
}

func (v PrincipalView) Principal() Principal {
	if v.Role == Admin {
		return AdminPrincipal{UserID: v.ID, Username: v.Username, Email: v.Email}
	}
	return LearnerPrincipal{UserID: v.ID, Username: v.Username, Email: v.Email, Department: v.Department}
}
