package journal

// Options configures the journal service
type Options struct {
	// Path is the database file; empty keeps the journal in memory
	Path string
}

// Service wraps Journal as a hub-managed service
type Service struct {
	opts    Options
	journal *Journal
}

// NewService creates an unopened journal service
func NewService() *Service {
	return &Service{}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "journal"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// Recognized args: *Options
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		if opts, ok := arg.(*Options); ok && opts != nil {
			s.opts = *opts
		}
	}

	path := s.opts.Path
	if path == "" {
		path = ":memory:"
	}
	j, err := Open(path)
	if err != nil {
		return err
	}
	s.journal = j
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.journal == nil {
		return nil
	}
	err := s.journal.Close()
	s.journal = nil
	return err
}

// Journal returns the open journal, nil before Init
func (s *Service) Journal() *Journal {
	return s.journal
}
