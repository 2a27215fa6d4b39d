// Package fmd embeds the design-to-product recommender in a Go program
// without the HTTP API or the background worker.
//
// Processing runs on the caller's goroutine, so Process returns once the
// design profile is stored.
//
//	client, _ := fmd.New(ctx, fmd.WithMemory())
//	defer client.Close()
//
//	products, _ := client.Recommend(ctx, fmd.Brief{
//	    InputMode:    fmd.ModeText,
//	    CategoryHint: "logo",
//	    TextPrompt:   "minimal blue coffee brand",
//	}, fmd.SearchParams{Limit: 10})
//
// The step-by-step API mirrors the HTTP endpoints: CreateSession,
// SubmitDesign, Process, Search and History.
package fmd
