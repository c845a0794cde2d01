package catalog

// Unit is one topic on the learning path. Units form an ordered sequence
// per subject/grade; unlock propagation walks them in Order.
type Unit struct {
	ID          string `yaml:"id" json:"id"`
	Slug        string `yaml:"slug,omitempty" json:"slug"`
	Name        string `yaml:"name" json:"name"`
	Subject     string `yaml:"subject" json:"subject"`
	Grade       int    `yaml:"grade" json:"grade"`
	Order       int    `yaml:"order" json:"order"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}
