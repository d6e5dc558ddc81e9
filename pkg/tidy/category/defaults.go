package category

// OthersName is the catch-all category for unclassified extensions.
// It is always present in a loaded Map.
const OthersName = "Others"

// Defaults returns the built-in category map. The returned map is a
// fresh copy; callers may mutate it freely.
func Defaults() Map {
	return Map{
		"Images":      {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".heic", ".svg", ".ico"},
		"Videos":      {".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg"},
		"Audio":       {".mp3", ".wav", ".aac", ".ogg", ".flac", ".m4a", ".wma", ".opus"},
		"Documents":   {".pdf", ".docx", ".doc", ".txt", ".pptx", ".ppt", ".xlsx", ".xls", ".odt", ".csv", ".rtf", ".tex"},
		"Archives":    {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"},
		"Code":        {".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".h", ".json", ".xml", ".yaml", ".yml"},
		"Executables": {".exe", ".msi", ".apk", ".appimage", ".dmg", ".deb", ".rpm"},
		OthersName:    {},
	}
}
