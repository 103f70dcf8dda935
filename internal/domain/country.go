package domain

// Country is an entry in the directory's country selector.
type Country struct {
	Code string
	Name string
}
