package auth

// SuperadminLoginDTO and AdminLoginDTO authenticate by username; employees
// log in with their company and employee ids as issued by their admin.
type SuperadminLoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type EmployeeLoginDTO struct {
	CompanyID  int64  `json:"company_id"`
	EmployeeID int64  `json:"emp_id"`
	Password   string `json:"emp_password"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// LoginResponse mirrors what the dashboard login form expects.
type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d SuperadminLoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d AdminLoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d EmployeeLoginDTO) Validate() error {
	if d.CompanyID <= 0 {
		return ValidationError{Msg: "company_id is required"}
	}
	if d.EmployeeID <= 0 {
		return ValidationError{Msg: "emp_id is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "emp_password is required"}
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	if d.OldPassword == "" || d.NewPassword == "" {
		return ValidationError{Msg: "old and new passwords are required"}
	}
	if len(d.NewPassword) < 6 {
		return ValidationError{Msg: "new password must be at least 6 characters long"}
	}
	return nil
}
