package indexer

// PageText is the extracted, whitespace-normalized text of one PDF page.
type PageText struct {
	Text string // Normalized page text
	Page int    // 1-based page number
}

// Fragment is a bounded span of page text prepared for embedding and retrieval.
type Fragment struct {
	Text  string // Fragment text content
	Page  int    // Originating page number
	Index int    // Fragment sequence index within the document (starts at 0)
}
