package domain

// Admin models an agency staff account. Password holds whatever the configured
// credential verifier compares against.
type Admin struct {
	ID       string
	Name     string
	Email    string
	Password string
	Agency   Agency
}

// AdminPublic is an Admin without its credential. It is what a session holds.
type AdminPublic struct {
	ID     string `json:"id" cbor:"1,keyasint"`
	Name   string `json:"name" cbor:"2,keyasint"`
	Email  string `json:"email" cbor:"3,keyasint"`
	Agency Agency `json:"agency" cbor:"4,keyasint"`
}

// Public strips the credential.
func (a Admin) Public() AdminPublic {
	return AdminPublic{ID: a.ID, Name: a.Name, Email: a.Email, Agency: a.Agency}
}
