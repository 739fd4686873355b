package store

// Typed accessors over the JSON collections. Reads return the zero
// collection when the key is absent; real storage failures come back as
// errors so the engine can decide whether to degrade or surface them.

func (s *Store) Profile() (UserProfile, error) {
	var p UserProfile
	if _, err := s.getJSON(keyUserProfile, &p); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

func (s *Store) SaveProfile(p UserProfile) error {
	return s.setJSON(keyUserProfile, p)
}

func (s *Store) Catalog() (Catalog, error) {
	c := Catalog{}
	if _, err := s.getJSON(keyCatalog, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) SaveCatalog(c Catalog) error {
	return s.setJSON(keyCatalog, c)
}

func (s *Store) Logs() ([]ActivityRecord, error) {
	var logs []ActivityRecord
	if _, err := s.getJSON(keyLogs, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) SaveLogs(logs []ActivityRecord) error {
	if logs == nil {
		logs = []ActivityRecord{}
	}
	return s.setJSON(keyLogs, logs)
}

func (s *Store) DailyStats() ([]DailyStat, error) {
	var stats []DailyStat
	if _, err := s.getJSON(keyDailyStats, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) SaveDailyStats(stats []DailyStat) error {
	if stats == nil {
		stats = []DailyStat{}
	}
	return s.setJSON(keyDailyStats, stats)
}

func (s *Store) Settings() (Settings, error) {
	cfg := DefaultSettings()
	if _, err := s.getJSON(keySettings, &cfg); err != nil {
		return DefaultSettings(), err
	}
	return cfg, nil
}

func (s *Store) SaveSettings(cfg Settings) error {
	return s.setJSON(keySettings, cfg)
}
