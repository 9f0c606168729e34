package models

import "time"

// Document is the whole persisted state. It is loaded once at start and
// rewritten in full on every mutation.
type Document struct {
	Users     []User     `json:"users"`
	Products  []Product  `json:"products"`
	Orders    []Order    `json:"orders"`
	Shifts    []Shift    `json:"shifts"`
	Tables    []Table    `json:"tables"`
	Settings  Settings   `json:"settings"`
	AuditLogs []AuditLog `json:"audit_logs"`
}

func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize replaces nil collections so the JSON shape is stable.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	if d.Shifts == nil {
		d.Shifts = []Shift{}
	}
	if d.Tables == nil {
		d.Tables = []Table{}
	}
	if d.AuditLogs == nil {
		d.AuditLogs = []AuditLog{}
	}
}

func (d *Document) FindOrder(id string) (int, bool) {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindShift(id string) (int, bool) {
	for i := range d.Shifts {
		if d.Shifts[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindProduct(id string) (int, bool) {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindTableByCode(code string) (int, bool) {
	for i := range d.Tables {
		if d.Tables[i].Code == code {
			return i, true
		}
	}
	return -1, false
}

func (d *Document) FindUser(username string) (int, bool) {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a deep copy, so a mutation can run on it and be discarded on failure.
func (d *Document) Clone() *Document {
	c := &Document{
		Users:     append([]User(nil), d.Users...),
		Products:  make([]Product, len(d.Products)),
		Orders:    make([]Order, len(d.Orders)),
		Shifts:    make([]Shift, len(d.Shifts)),
		Tables:    append([]Table(nil), d.Tables...),
		Settings:  Settings{QRISImage: cloneString(d.Settings.QRISImage), QRISUpdatedAt: cloneTime(d.Settings.QRISUpdatedAt)},
		AuditLogs: make([]AuditLog, len(d.AuditLogs)),
	}
	for i, p := range d.Products {
		p.Image = cloneString(p.Image)
		p.UpdatedAt = cloneTime(p.UpdatedAt)
		c.Products[i] = p
	}
	for i, o := range d.Orders {
		o.Items = append([]OrderItem(nil), o.Items...)
		c.Orders[i] = o
	}
	for i, s := range d.Shifts {
		s.EndAt = cloneTime(s.EndAt)
		s.UpdatedAt = cloneTime(s.UpdatedAt)
		if s.OrdersHandled != nil {
			n := *s.OrdersHandled
			s.OrdersHandled = &n
		}
		c.Shifts[i] = s
	}
	for i, l := range d.AuditLogs {
		l.BeforeData = append([]byte(nil), l.BeforeData...)
		l.AfterData = append([]byte(nil), l.AfterData...)
		c.AuditLogs[i] = l
	}
	c.Normalize()
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
