package models

// RecordPatch is a typed partial update of a Record. Only non-nil fields are
// applied, which makes the set of touched fields explicit instead of being
// inferred from loose map keys.
//
// For sync creates the same shape is applied to a fresh record; ID and
// BatchName are handled by the reconciler, never by Apply.
type RecordPatch struct {
	ID        uint    `json:"id,omitempty"`
	BatchName *string `json:"batch_name,omitempty"`

	FileName          *string `json:"file_name,omitempty"`
	SerialNo          *string `json:"serial_no,omitempty"`
	Name              *string `json:"name,omitempty"`
	VoterNo           *string `json:"voter_no,omitempty"`
	FatherName        *string `json:"father_name,omitempty"`
	MotherName        *string `json:"mother_name,omitempty"`
	Occupation        *string `json:"occupation,omitempty"`
	OccupationDetails *string `json:"occupation_details,omitempty"`
	BirthDate         *string `json:"birth_date,omitempty"`
	Address           *string `json:"address,omitempty"`

	PhoneNumber    *string `json:"phone_number,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
	FacebookLink   *string `json:"facebook_link,omitempty"`
	TiktokLink     *string `json:"tiktok_link,omitempty"`
	YoutubeLink    *string `json:"youtube_link,omitempty"`
	InstaLink      *string `json:"insta_link,omitempty"`
	PhotoLink      *string `json:"photo_link,omitempty"`

	Description        *string `json:"description,omitempty"`
	PoliticalStatus    *string `json:"political_status,omitempty"`
	RelationshipStatus *string `json:"relationship_status,omitempty"`
	Gender             *string `json:"gender,omitempty"`
	Age                *int    `json:"age,omitempty"`
}

// Apply overwrites the supplied fields on r and returns the names of the
// fields that were set.
func (p RecordPatch) Apply(r *Record) []string {
	var changed []string

	setStr := func(name string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = append(changed, name)
		}
	}

	setStr("file_name", &r.FileName, p.FileName)
	setStr("serial_no", &r.SerialNo, p.SerialNo)
	setStr("name", &r.Name, p.Name)
	setStr("voter_no", &r.VoterNo, p.VoterNo)
	setStr("father_name", &r.FatherName, p.FatherName)
	setStr("mother_name", &r.MotherName, p.MotherName)
	setStr("occupation", &r.Occupation, p.Occupation)
	setStr("occupation_details", &r.OccupationDetails, p.OccupationDetails)
	setStr("birth_date", &r.BirthDate, p.BirthDate)
	setStr("address", &r.Address, p.Address)
	setStr("phone_number", &r.PhoneNumber, p.PhoneNumber)
	setStr("whatsapp_number", &r.WhatsappNumber, p.WhatsappNumber)
	setStr("facebook_link", &r.FacebookLink, p.FacebookLink)
	setStr("tiktok_link", &r.TiktokLink, p.TiktokLink)
	setStr("youtube_link", &r.YoutubeLink, p.YoutubeLink)
	setStr("insta_link", &r.InstaLink, p.InstaLink)
	setStr("photo_link", &r.PhotoLink, p.PhotoLink)
	setStr("description", &r.Description, p.Description)
	setStr("political_status", &r.PoliticalStatus, p.PoliticalStatus)
	setStr("relationship_status", &r.RelationshipStatus, p.RelationshipStatus)
	setStr("gender", &r.Gender, p.Gender)

	if p.Age != nil {
		age := *p.Age
		r.Age = &age
		changed = append(changed, "age")
	}

	return changed
}
