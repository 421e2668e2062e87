package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Batch:
		o.printBatch(v)
	case BatchEmployee:
		o.printBatchEmployee(v)
	case ImportResult:
		fmt.Printf("Staged %d employee(s)\n", v.Staged)
	case SyncResult:
		fmt.Printf("Synced %d employee(s) to the directory\n", v.Synced)
	case ScoreList:
		o.printScores(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Batch response type (matches API)
type Batch struct {
	ID        string          `json:"id"`
	Employees []BatchEmployee `json:"employees"`
	Synced    bool            `json:"synced"`
}

// BatchEmployee response type
type BatchEmployee struct {
	ID         string `json:"uuid"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ImportResult response type
type ImportResult struct {
	Staged int `json:"staged"`
}

// SyncResult response type
type SyncResult struct {
	Synced int `json:"synced"`
}

// ScoreList response type
type ScoreList struct {
	Scores []Score `json:"scores"`
	Total  int     `json:"total"`
}

// Score response type
type Score struct {
	EmployeeName string `json:"employee_name"`
	Game         string `json:"game"`
	Score        int    `json:"score"`
	PhotoURL     string `json:"photo_url"`
	EventDate    string `json:"event_date"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printBatch(b Batch) {
	fmt.Printf("Batch: %s\n", b.ID)
	if b.Synced {
		fmt.Println("State: synced")
	} else {
		fmt.Println("State: staged")
	}
	fmt.Printf("Employees (%d):\n", len(b.Employees))
	for _, e := range b.Employees {
		line := fmt.Sprintf("  %s  %s", e.ID, e.Name)
		if e.EmployeeID != "" {
			line += fmt.Sprintf("  [%s]", e.EmployeeID)
		}
		fmt.Println(line)
	}
}

func (o *Output) printBatchEmployee(e BatchEmployee) {
	line := fmt.Sprintf("Staged %s  %s", e.ID, e.Name)
	if e.EmployeeID != "" {
		line += fmt.Sprintf("  [%s]", e.EmployeeID)
	}
	fmt.Println(line)
}

func (o *Output) printScores(s ScoreList) {
	if s.Total == 0 {
		fmt.Println("No scores found")
		return
	}
	fmt.Printf("Scores (%d):\n", s.Total)
	for _, sc := range s.Scores {
		fmt.Printf("  %s  %-24s  %s  %d\n", sc.EventDate, sc.EmployeeName, sc.Game, sc.Score)
	}
}
