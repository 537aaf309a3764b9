package validation

// FieldErrors maps a form field name to a human-readable message for the
// first rule that field violated.
type FieldErrors map[string]string

// SignupForm is the raw signup submission before validation.
type SignupForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// SignupData is a validated, normalized signup record. Phone is empty when
// it was omitted on the form.
type SignupData struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone,omitempty"`
}

// Validate checks every field independently and returns either the
// normalized record or a non-empty error map. The first failing rule wins
// per field.
func (f SignupForm) Validate() (*SignupData, FieldErrors) {
	errs := FieldErrors{}

	switch {
	case f.Username == "":
		errs["username"] = "This field is required"
	case !IsValidUsername(f.Username):
		errs["username"] = "Username must be 3-20 characters, letters and digits only"
	}

	switch {
	case f.Email == "":
		errs["email"] = "This field is required"
	case !IsValidEmail(f.Email):
		errs["email"] = "Please enter a valid email address"
	}

	switch {
	case f.Password == "":
		errs["password"] = "This field is required"
	case !IsValidPassword(f.Password):
		errs["password"] = "Password must be at least 8 characters and contain uppercase, lowercase, a digit and a special character"
	}

	switch {
	case f.ConfirmPassword == "":
		errs["confirmPassword"] = "Please confirm your password"
	case f.ConfirmPassword != f.Password:
		errs["confirmPassword"] = "Passwords do not match"
	}

	if f.Phone != "" && !IsValidPhone(f.Phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &SignupData{
		Username:        f.Username,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		Phone:           f.Phone,
	}, nil
}

// LoginForm is the raw login submission before validation.
type LoginForm struct {
	Username string
	Password string
}

// LoginData is a validated login record.
type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present. Login applies no
// format rules beyond presence so that existing accounts predating a rule
// change can still sign in.
func (f LoginForm) Validate() (*LoginData, FieldErrors) {
	errs := FieldErrors{}

	if f.Username == "" {
		errs["username"] = "This field is required"
	}
	if f.Password == "" {
		errs["password"] = "This field is required"
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &LoginData{Username: f.Username, Password: f.Password}, nil
}

// UpdateProfileForm is the raw profile-edit submission. Both fields are
// optional; present values must pass the same rules as signup.
type UpdateProfileForm struct {
	Username string
	Phone    string
}

// UpdateProfileData is a validated profile update. Empty fields are
// omitted from the request payload.
type UpdateProfileData struct {
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Validate checks the optional profile fields.
func (f UpdateProfileForm) Validate() (*UpdateProfileData, FieldErrors) {
	errs := FieldErrors{}

	if f.Username != "" && !IsValidUsername(f.Username) {
		errs["username"] = "Username must be 3-20 characters, letters and digits only"
	}
	if f.Phone != "" && !IsValidPhone(f.Phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &UpdateProfileData{Username: f.Username, Phone: f.Phone}, nil
}
