package models

// FormField is one text field of a FormData.
type FormField struct {
	Name  string
	Value string
}

// FilePart is the file field of a FormData.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Content     []byte
}

// FormData is a multipart form body: ordered text fields plus at most one file.
type FormData struct {
	Fields []FormField
	File   *FilePart
}

// Set replaces the value of name, appending the field if it is new.
func (f *FormData) Set(name, value string) {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			f.Fields[i].Value = value
			return
		}
	}
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
}

// Get returns the value of the text field name, or "" if it is absent.
func (f *FormData) Get(name string) string {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// FileInput is what the file picker hands over: the candidate files of one
// change event.
type FileInput struct {
	Files []File
}

// File is a single candidate file. ContentType may be empty when the picker
// did not declare one.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}
