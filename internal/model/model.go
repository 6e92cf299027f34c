package model

type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

type User struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Website  string   `json:"website,omitempty"`
	Company  *Company `json:"company,omitempty"`
	Address  *Address `json:"address,omitempty"`

	// IsLocal marks users created during this session. The remote API does not
	// know their ids, so they are never sent back to it.
	IsLocal bool `json:"isLocal,omitempty"`
}

func (u User) EntityID() int { return u.ID }
func (u User) Local() bool   { return u.IsLocal }

// WithLocalID returns a copy of u carrying a client-side id.
func (u User) WithLocalID(id int) User {
	u.ID = id
	u.IsLocal = true
	return u
}

type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`

	IsLocal bool `json:"isLocal,omitempty"`
}

func (p Post) EntityID() int { return p.ID }
func (p Post) Local() bool   { return p.IsLocal }

func (p Post) WithLocalID(id int) Post {
	p.ID = id
	p.IsLocal = true
	return p
}
