package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking is one admitted appointment. Date is an opaque string and is only ever
// compared by exact equality.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Treatment   string             `bson:"treatment" json:"treatment"`
	Date        string             `bson:"date" json:"date"`
	Slot        string             `bson:"slot" json:"slot"`
	Patient     string             `bson:"patient" json:"patient"`
	PatientName string             `bson:"patientName,omitempty" json:"patientName,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Price       float64            `bson:"price,omitempty" json:"price,omitempty"`
}

// Triple is the key used for duplicate booking detection.
type Triple struct {
	Treatment string
	Date      string
	Patient   string
}

func (b Booking) Triple() Triple {
	return Triple{Treatment: b.Treatment, Date: b.Date, Patient: b.Patient}
}
