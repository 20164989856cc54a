package ndlcore

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewAgentSearchResponse_CountInvariant(t *testing.T) {
	data := []Record{{"title": "A"}, {"title": "B"}}

	if _, err := NewAgentSearchResponse(NewSearchResultMetadata(1), data); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("err = %v, want ErrCountMismatch", err)
	}

	resp, err := NewAgentSearchResponse(NewSearchResultMetadata(2), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != resp.Metadata.TotalCount {
		t.Error("invariant violated")
	}
}

func TestNewAgentSearchResponse_EmptyDataEncodesAsArray(t *testing.T) {
	resp, err := NewAgentSearchResponse(NewSearchResultMetadata(0), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Metadata struct {
			TotalCount         int               `json:"total_count"`
			ColumnDescriptions map[string]string `json:"column_descriptions"`
		} `json:"metadata"`
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Data == nil {
		t.Error("data should encode as [] not null")
	}
	if len(decoded.Metadata.ColumnDescriptions) != CorpusSchema().Len() {
		t.Errorf("column_descriptions = %d keys", len(decoded.Metadata.ColumnDescriptions))
	}
}

func TestAgentSearchResponse_Unmarshal(t *testing.T) {
	raw := `{"metadata":{"total_count":1,"column_descriptions":{"title":"Title."}},"data":[{"title":"A"}]}`
	var resp AgentSearchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Metadata.TotalCount != 1 || resp.Data[0]["title"] != "A" {
		t.Errorf("resp = %+v", resp)
	}
	if d, _ := resp.Metadata.ColumnDescriptions.Description("title"); d != "Title." {
		t.Errorf("title description = %q", d)
	}
}
