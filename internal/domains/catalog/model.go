package catalog

// DefaultCoverURL is substituted at read time for books without an image.
const DefaultCoverURL = "https://images.rawpixel.com/image_png_social_landscape/" +
	"czNmcy1wcml2YXRlL3Jhd3BpeGVsX2ltYWdlcy93ZWJzaXRlX2NvbnRlbnQv" +
	"bHIvam9iNjgzLTAwMzEucG5n.png"

// Book is the joined catalog record served by the API. Authors is the
// comma-separated display string, joined in link-creation order.
type Book struct {
	BookID          int64  `json:"book_id"`
	Title           string `json:"title"`
	PublicationYear *int   `json:"publication_year"`
	ImageURL        string `json:"image_url"`
	Authors         string `json:"authors"`
}
