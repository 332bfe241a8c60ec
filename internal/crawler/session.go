package crawler

// Session holds the state of one crawl: the frontier, what has been visited,
// and the product pages discovered so far. It is owned by a single Run.
type Session struct {
	frontier []string
	queued   map[string]struct{}
	visited  map[string]struct{}

	products     map[string]struct{}
	productOrder []string

	pagesProcessed int
}

// NewSession seeds a session with the start URL.
func NewSession(seed string) *Session {
	s := &Session{
		queued:   make(map[string]struct{}),
		visited:  make(map[string]struct{}),
		products: make(map[string]struct{}),
	}
	s.Enqueue(seed)
	return s
}

// Enqueue appends url to the back of the frontier unless it was already visited or queued.
func (s *Session) Enqueue(url string) bool {
	if s.Visited(url) {
		return false
	}
	if _, ok := s.queued[url]; ok {
		return false
	}
	s.queued[url] = struct{}{}
	s.frontier = append(s.frontier, url)
	return true
}

// Next pops the front of the frontier. ok is false when the frontier is empty.
func (s *Session) Next() (url string, ok bool) {
	if len(s.frontier) == 0 {
		return "", false
	}
	url = s.frontier[0]
	s.frontier = s.frontier[1:]
	delete(s.queued, url)
	return url, true
}

// MarkVisited records url as fetched and counts it against the page cap.
func (s *Session) MarkVisited(url string) {
	s.visited[url] = struct{}{}
	s.pagesProcessed++
}

func (s *Session) Visited(url string) bool {
	_, ok := s.visited[url]
	return ok
}

// AddProduct records a product page; repeated discoveries are ignored.
func (s *Session) AddProduct(url string) bool {
	if _, ok := s.products[url]; ok {
		return false
	}
	s.products[url] = struct{}{}
	s.productOrder = append(s.productOrder, url)
	return true
}

// Products returns the discovered product URLs in discovery order.
func (s *Session) Products() []string {
	out := make([]string, len(s.productOrder))
	copy(out, s.productOrder)
	return out
}

func (s *Session) PagesProcessed() int { return s.pagesProcessed }

func (s *Session) Pending() int { return len(s.frontier) }
