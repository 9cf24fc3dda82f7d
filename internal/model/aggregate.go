package model

// AggregateRecord is the durable per-visitor snapshot of station durations,
// persisted independent of any single session. At most one record exists
// per visitor id; a station's field is absent until that station has been
// completed at least once.
type AggregateRecord struct {
	VisitorID VisitorID
	Durations map[StationID]float64
}

// NewAggregateRecord creates an empty record for a visitor
func NewAggregateRecord(id VisitorID) *AggregateRecord {
	return &AggregateRecord{
		VisitorID: id,
		Durations: make(map[StationID]float64),
	}
}

// Set records the latest completed duration for a station
func (r *AggregateRecord) Set(station StationID, minutes float64) {
	if r.Durations == nil {
		r.Durations = make(map[StationID]float64)
	}
	r.Durations[station] = minutes
}

// Duration returns the recorded duration for a station, with ok false
// when the station has never been completed by this visitor
func (r *AggregateRecord) Duration(station StationID) (float64, bool) {
	m, ok := r.Durations[station]
	return m, ok
}

// Clone returns a deep copy of the record
func (r *AggregateRecord) Clone() *AggregateRecord {
	out := NewAggregateRecord(r.VisitorID)
	for id, m := range r.Durations {
		out.Durations[id] = m
	}
	return out
}
