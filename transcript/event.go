package transcript

import "fmt"

// Kind identifies the shape of a transcript line.
type Kind uint8

const (
	ChangeDir Kind = iota // $ cd <target>
	List                  // $ ls
	DirEntry              // dir <name>
	FileEntry             // <size> <name>
)

// Reserved change-directory targets.
const (
	RootDir   = "/"
	ParentDir = ".."
)

func (k Kind) String() string {
	switch k {
	case ChangeDir:
		return "cd"
	case List:
		return "ls"
	case DirEntry:
		return "dir"
	case FileEntry:
		return "file"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is one parsed transcript line.
type Event struct {
	Kind Kind
	Name string // cd target, or entry name
	Size uint64 // only set for FileEntry
	Line int    // 1-based source line, 0 for synthetic events
}

func (e Event) String() string {
	switch e.Kind {
	case ChangeDir:
		return "$ cd " + e.Name
	case List:
		return "$ ls"
	case DirEntry:
		return "dir " + e.Name
	case FileEntry:
		return fmt.Sprintf("%d %s", e.Size, e.Name)
	}
	return e.Kind.String()
}
