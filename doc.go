// Package ndlcore provides a Go client for the NDL Core Corpus search API,
// a semantic index of UK open government datasets.
//
// Two result shapes are offered:
//   - Search returns a Table (one row per record, one column per field)
//   - SearchAgentic returns an AgentSearchResponse: records plus metadata
//     describing every field, suited to passing to an LLM agent
//
// # Usage
//
//	client, _ := ndlcore.New()
//	table, err := client.Search(ctx, "police use of force statistics")
//	if err != nil {
//	    var status *ndlcore.HTTPStatusError
//	    if errors.As(err, &status) { ... }
//	}
//	for _, title := range table.Column("title") { ... }
//
//	resp, _ := client.SearchAgentic(ctx, "NHS waiting times", ndlcore.WithLimit(5))
//	fmt.Println(resp.Metadata.TotalCount, resp.Metadata.ColumnDescriptions.Names())
//
// The stateless agent.SearchAgentic function wraps the same call for tool
// integrations. Requests are never retried, cached or paginated: one call is
// one GET {base}/search?query=... round trip.
package ndlcore
