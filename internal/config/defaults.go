package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/briefpipe/data/db/briefs.db"
	}
	if cfg.Storage.PrecedentIndexPath == "" {
		cfg.Storage.PrecedentIndexPath = "/usr/local/var/briefpipe/data/indices/precedents"
	}
	if cfg.OCR.ModelPath == "" {
		cfg.OCR.ModelPath = "/usr/local/var/briefpipe/data/models/text-recognition.onnx"
	}
	if cfg.OCR.TimeoutSeconds == 0 {
		cfg.OCR.TimeoutSeconds = 30
	}
	if cfg.OCR.MinTextLength == 0 {
		cfg.OCR.MinTextLength = 10
	}
	if cfg.Analysis.ChunkSize == 0 {
		cfg.Analysis.ChunkSize = 5
	}
	if cfg.Analysis.PrecedentLimit == 0 {
		cfg.Analysis.PrecedentLimit = 10
	}
	if cfg.Intake.Extensions == nil {
		cfg.Intake.Extensions = []string{".pdf", ".docx", ".doc", ".xlsx", ".xls", ".csv", ".txt", ".rtf", ".png", ".jpg", ".jpeg", ".tiff"}
	}
}
