package pad

// Record is one raw row from the analytics data source. The upstream column
// layout is not contractually stable, so values stay loosely typed and are
// resolved through candidate column lists at normalization time.
type Record map[string]any

// Card is the fixed display shape for a single PAD test-strip reading.
// Every field is populated after normalization: missing names become
// "Unknown", a missing timestamp becomes the empty string.
type Card struct {
	ID             int
	SampleID       *int64
	SampleName     string
	ProjectName    string
	UserName       string
	DateOfCreation string
	Quantity       *float64
	Notes          *Notes
	ImageURL       string
	CameraType     string
}

// Notes is the structured form of a card's JSON-encoded notes blob, written
// by the capture apps with model-prediction metadata. When the blob does not
// parse, only Raw carries the original text and every other field is zero.
type Notes struct {
	PhoneID         string   `json:"Phone ID"`
	User            string   `json:"User"`
	AppType         string   `json:"App type"`
	Build           *int     `json:"Build"`
	NeuralNet       string   `json:"Neural net"`
	PredictedDrug   string   `json:"Predicted drug"`
	PredictionScore *float64 `json:"Prediction score"`
	SafeStatus      string   `json:"Safe"`
	QuantityNN      *float64 `json:"Quantity NN"`
	QuantityPLS     *float64 `json:"Quantity PLS"`
	PLSUsed         *bool    `json:"PLS used"`
	NotesText       string   `json:"Notes"`
	Raw             string   `json:"-"`
}

// Parsed reports whether the notes blob was valid JSON.
func (n *Notes) Parsed() bool {
	return n != nil && n.Raw == ""
}

// Project is the slice of a project row that the landing page needs.
type Project struct {
	ID       int64
	Name     string
	UserName string
}

// ProjectFromRecord extracts the landing-page fields from a raw project row.
func ProjectFromRecord(r Record) Project {
	return Project{
		ID:       int64(r.Int(projectIDColumns, 0)),
		Name:     r.String(projectNameColumns, "Unknown"),
		UserName: r.String(projectUserColumns, ""),
	}
}
