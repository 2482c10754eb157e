package model

type Member struct {
	ID          string `json:"ID"`
	Name        string `json:"Name,omitempty"`
	Addr        string `json:"Addr,omitempty"`
	Role        string `json:"Role"`
	Version     string `json:"Version,omitempty"`
	Incarnation uint64 `json:"Incarnation"`
	Status      string `json:"Status"`
}

type GetMembersResponse struct {
	ViewID  uint64   `json:"ViewID"`
	Members []Member `json:"Members"`
}

type GetViewResponse struct {
	ID          uint64   `json:"ID"`
	PreviousID  uint64   `json:"PreviousID,omitempty"`
	Members     []string `json:"Members"`
	Fingerprint string   `json:"Fingerprint"`
}
