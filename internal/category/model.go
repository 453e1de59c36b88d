package category

type Category struct {
	Name string
}
