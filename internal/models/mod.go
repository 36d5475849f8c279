package models

// LangFile is one language file found inside a mod JAR.
type LangFile struct {
	Language string   `json:"language"` // e.g. "en_us"
	Path     string   `json:"path"`     // path within the JAR
	Content  *Dataset `json:"content"`
}

// ModInfo describes a scanned mod JAR and its translatable content.
type ModInfo struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Version   string     `json:"version"`
	JarPath   string     `json:"jar_path"`
	IconURI   string     `json:"icon_uri,omitempty"` // base64 data URI thumbnail
	LangFiles []LangFile `json:"lang_files"`
}
