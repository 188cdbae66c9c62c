package model

import "time"

// Show represents a production that runs at one venue over a date
// window.  Individual dated performances of the show are stored in
// the performances table; a performance's date must fall inside the
// show's [StartDate, EndDate] window.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – venue hosting the show.
//  ShowName    – display name of the show.
//  Description – optional blurb.
//  StartDate   – first day of the run ("2006-01-02").
//  EndDate     – last day of the run ("2006-01-02", inclusive).
//  CreatedBy   – user ID of the creator.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Show struct {
	ID          uint64    `json:"id"`          // shows.id
	VenueID     uint64    `json:"venue_id"`    // shows.venue_id
	ShowName    string    `json:"show_name"`   // shows.show_name
	Description string    `json:"description"` // shows.description
	StartDate   string    `json:"start_date"`  // shows.start_date ("YYYY-MM-DD")
	EndDate     string    `json:"end_date"`    // shows.end_date   ("YYYY-MM-DD")
	CreatedBy   uint64    `json:"created_by"`  // shows.created_by
	CreatedAt   time.Time `json:"created_at"`  // shows.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // shows.updated_at
}
