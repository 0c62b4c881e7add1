package site

import "context"

func stageMap(_ context.Context, s *Site) error {
	mappings, err := buildMappings(s.cfg, s.pages, s.logger)
	if err != nil {
		return err
	}
	s.mappings = mappings
	s.pages = nil
	s.report.Mappings = len(mappings)
	return nil
}
