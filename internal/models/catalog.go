package models

// Company is the operator/company profile record stored under the
// COMPANY key.
type Company struct {
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	LogoURL  string `json:"logoUrl,omitempty"`
}

// Client is a roster entry stored under the CLIENTS key. The order
// lifecycle consults clients read-only.
type Client struct {
	ID       string `json:"id"`
	Code     string `json:"code,omitempty"`
	Name     string `json:"name"`
	Branch   string `json:"branch,omitempty"`
	Document string `json:"document,omitempty"`
	Address  string `json:"address,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Product is a chemical-product catalog entry stored under PRODUCTS.
type Product struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ActiveIngredient string `json:"activeIngredient,omitempty"`
	ChemicalGroup    string `json:"chemicalGroup,omitempty"`
	Registration     string `json:"registration,omitempty"`
	Batch            string `json:"batch,omitempty"`
	Validity         string `json:"validity,omitempty"`
	Quantity         string `json:"quantity,omitempty"`
}
