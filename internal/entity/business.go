package entity

// BusinessQuery is the immutable input handed to contact enrichment.
// Website may be empty; City may be "Unknown" when the map data carries
// no address tags.
type BusinessQuery struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
}

// ContactProfile is the structured result of a single enrichment call.
// GoogleMaps is always populated; Fallback is set exactly when no other
// contact channel (email, phone, whatsapp, social) was discovered.
type ContactProfile struct {
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	WhatsApp    string            `json:"whatsapp,omitempty"`
	Website     string            `json:"website,omitempty"`
	Social      map[string]string `json:"social"`
	GoogleMaps  string            `json:"google_maps"`
	ContactForm string            `json:"contact_form,omitempty"`
	Fallback    string            `json:"fallback,omitempty"`
}

// HasDirectChannel reports whether any actionable contact channel was found.
func (p ContactProfile) HasDirectChannel() bool {
	if p.Email != "" || p.Phone != "" || p.WhatsApp != "" {
		return true
	}
	for _, link := range p.Social {
		if link != "" {
			return true
		}
	}
	return false
}

// RankedBusiness is a scored discovery result. It is built once per search
// batch and discarded after the response is sent.
type RankedBusiness struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Address            string            `json:"address"`
	Distance           float64           `json:"distance"`
	Phone              string            `json:"phone,omitempty"`
	Email              string            `json:"email,omitempty"`
	Website            string            `json:"website,omitempty"`
	Social             map[string]string `json:"social"`
	ContactForm        string            `json:"contact_form,omitempty"`
	ContactFallback    string            `json:"contact_fallback,omitempty"`
	GoogleMaps         string            `json:"google_maps"`
	Category           string            `json:"category"`
	CompatibilityScore int               `json:"compatibility_score"`
	IsNew              bool              `json:"is_new"`
}
