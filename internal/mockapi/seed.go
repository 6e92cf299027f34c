package mockapi

import (
	"fmt"

	"crudconsole/internal/model"
)

var seedNames = []struct {
	name, username, email, city, company string
}{
	{"Leanne Graham", "Bret", "Sincere@april.biz", "Gwenborough", "Romaguera-Crona"},
	{"Ervin Howell", "Antonette", "Shanna@melissa.tv", "Wisokyburgh", "Deckow-Crist"},
	{"Clementine Bauch", "Samantha", "Nathan@yesenia.net", "McKenziehaven", "Romaguera-Jacobson"},
	{"Patricia Lebsack", "Karianne", "Julianne.OConner@kory.org", "South Elvis", "Robel-Corkery"},
	{"Chelsey Dietrich", "Kamren", "Lucio_Hettinger@annie.ca", "Roscoeview", "Keebler LLC"},
	{"Mrs. Dennis Schulist", "Leopoldo_Corkery", "Karley_Dach@jasper.info", "South Christy", "Considine-Lockman"},
	{"Kurtis Weissnat", "Elwyn.Skiles", "Telly.Hoeger@billy.biz", "Howemouth", "Johns Group"},
	{"Nicholas Runolfsdottir V", "Maxime_Nienow", "Sherwood@rosamond.me", "Aliyaview", "Abernathy Group"},
	{"Glenna Reichert", "Delphine", "Chaim_McDermott@dana.io", "Bartholomebury", "Yost and Sons"},
	{"Clementina DuBuque", "Moriah.Stanton", "Rey.Padberg@karina.biz", "Lebsackbury", "Hoeger LLC"},
}

const postsPerUser = 10

// SeedUsers returns the fixture users served by the mock API.
func SeedUsers() []model.User {
	out := make([]model.User, 0, len(seedNames))
	for i, s := range seedNames {
		out = append(out, model.User{
			ID:       i + 1,
			Name:     s.name,
			Username: s.username,
			Email:    s.email,
			Phone:    fmt.Sprintf("1-770-736-%04d", 8031+i),
			Website:  fmt.Sprintf("%s.example.org", s.username),
			Company:  &model.Company{Name: s.company, CatchPhrase: "Multi-layered client-server neural-net", BS: "harness real-time e-markets"},
			Address: &model.Address{
				Street:  "Kulas Light",
				Suite:   fmt.Sprintf("Apt. %d", 500+i),
				City:    s.city,
				Zipcode: fmt.Sprintf("92998-%04d", 3874+i),
				Geo:     model.Geo{Lat: "-37.3159", Lng: "81.1496"},
			},
		})
	}
	return out
}

// SeedPosts returns postsPerUser posts for every seed user, ids ascending.
func SeedPosts() []model.Post {
	out := make([]model.Post, 0, len(seedNames)*postsPerUser)
	id := 1
	for u := range seedNames {
		for n := 0; n < postsPerUser; n++ {
			out = append(out, model.Post{
				ID:     id,
				UserID: u + 1,
				Title:  fmt.Sprintf("post %d of %s", n+1, seedNames[u].username),
				Body:   fmt.Sprintf("Body of post %d.\n\nWritten by **%s**.", id, seedNames[u].name),
			})
			id++
		}
	}
	return out
}
