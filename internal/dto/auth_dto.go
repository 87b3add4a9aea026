package dto

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoggedUser is returned after a successful login. It never carries the password.
type LoggedUser struct {
	UserID      int    `json:"userId"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Username    string `json:"username"`
	AccessLevel int    `json:"accesslevel"`
	Token       string `json:"token"`
}
