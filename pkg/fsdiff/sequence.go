package fsdiff

import (
	"fmt"
	"io"
	"math/rand"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/fsprobe/pkg/logging"
	"github.com/mutagen-io/fsprobe/pkg/must"
	"github.com/mutagen-io/fsprobe/pkg/sysraw"
)

const (
	// workingDirectoryFlags are the flags used to open working directories.
	workingDirectoryFlags = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC
	// defaultMode is the mode used for created files and directories.
	defaultMode = 0777
	// maximumTransferSize is the exclusive upper bound on read, write, and
	// truncation sizes.
	maximumTransferSize = 512
	// maximumSeekOffset is the exclusive upper bound on seek offsets.
	maximumSeekOffset = 1024
	// maximumSelectionAttempts is the number of times that operation
	// generation is retried when the selected kind can't be generated in the
	// current state (e.g. a read with no open descriptors).
	maximumSelectionAttempts = 1000
	// maximumNameAttempts is the number of times that generation of a new
	// path is retried when it collides with an existing path.
	maximumNameAttempts = 100
)

// names are the path components used when generating paths.
var names = []string{
	"alfa", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
	"hotel", "india", "juliett", "kilo", "lima", "mike", "november",
	"oscar", "papa", "quebec", "romeo", "sierra", "tango", "uniform",
	"victor", "whiskey", "x-ray", "yankee", "zulu",
}

// sequence generates operations and tracks the state that they produce. All
// random choices are derived from a single seeded source and iterate over
// sorted state, so a given seed and configuration always produce the same
// sequence.
type sequence struct {
	// logger is the underlying logger.
	logger *logging.Logger
	// random is the source of all random choices.
	random *rand.Rand
	// weights are the operation selection weights.
	weights Weights
	// maximum is the total number of operations to generate.
	maximum int
	// completed is the number of operations completed.
	completed int
	// target is the state of the target tree.
	target side
	// reference is the state of the reference tree.
	reference side
	// workingPath is the working directory path, relative to the tree roots.
	workingPath string
	// directories is the set of directories believed to exist.
	directories map[string]bool
	// files is the set of files believed to exist.
	files map[string]bool
	// open are the create and open operations whose descriptors are open.
	open []*Operation
}

// newSequence creates a new sequence.
func newSequence(targetRoot, referenceRoot string, seed int64, weights Weights, maximum int, logger *logging.Logger) *sequence {
	return &sequence{
		logger:      logger,
		random:      rand.New(rand.NewSource(seed)),
		weights:     weights,
		maximum:     maximum,
		target:      side{root: targetRoot, workingDirectory: -1},
		reference:   side{root: referenceRoot, workingDirectory: -1},
		directories: make(map[string]bool),
		files:       make(map[string]bool),
	}
}

// hasPathPrefix indicates whether or not a slash-separated path is equal to or
// beneath the specified prefix. The empty prefix is the root, which contains
// every path.
func hasPathPrefix(p, prefix string) bool {
	return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
}

// sortedKeys returns the keys of a set in sorted order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// relativize converts a root-relative path into a path relative to the
// current working directory.
func (s *sequence) relativize(p string) string {
	relative, err := filepath.Rel("/"+s.workingPath, "/"+p)
	if err != nil {
		panic("unable to relativize absolute paths")
	}
	return relative
}

// randomName returns a random path component.
func (s *sequence) randomName() string {
	return names[s.random.Intn(len(names))]
}

// randomNode returns a path of at most maximumElements components. With the
// specified probability (in percent) an existing member of set is chosen, in
// which case the empty string is returned if there's no suitable member.
// Otherwise, a path that isn't known to exist is generated.
func (s *sequence) randomNode(set map[string]bool, maximumElements, existingProbability int) string {
	// Handle selection of an existing node.
	if s.random.Intn(100) < existingProbability {
		var candidates []string
		for _, p := range sortedKeys(set) {
			if strings.Count(p, "/")+1 <= maximumElements {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			return ""
		}
		return candidates[s.random.Intn(len(candidates))]
	}

	// Generate a new path, retrying on collisions.
	var candidate string
	for attempt := 0; attempt < maximumNameAttempts; attempt++ {
		elements := make([]string, maximumElements)
		for i := range elements {
			elements[i] = s.randomName()
		}
		candidate = strings.Join(elements, "/")
		if !s.files[candidate] && !s.directories[candidate] {
			break
		}
	}
	return candidate
}

// randomPath returns a path that is an existing directory, an existing file,
// or a new node, with the specified probabilities (in percent) for the first
// two cases. New nodes are nested inside an existing directory with the
// specified probability.
func (s *sequence) randomPath(existingDirectory, existingFile, nesting int) string {
	// Attempt to select an existing node.
	value := s.random.Intn(100)
	var set map[string]bool
	if value < existingDirectory {
		set = s.directories
	} else if value < existingDirectory+existingFile {
		set = s.files
	}
	if len(set) > 0 {
		keys := sortedKeys(set)
		return keys[s.random.Intn(len(keys))]
	}

	// Generate a new node, possibly nested.
	if len(s.directories) > 0 && s.random.Intn(100) < nesting {
		directories := sortedKeys(s.directories)
		return path.Join(directories[s.random.Intn(len(directories))], s.randomName())
	}
	return s.randomName()
}

// randomOpen returns a random open operation.
func (s *sequence) randomOpen() *Operation {
	if len(s.open) == 0 {
		return nil
	}
	return s.open[s.random.Intn(len(s.open))]
}

// next generates the next operation. It returns nil if the sequence is
// complete.
func (s *sequence) next() (*Operation, error) {
	// Check for completion.
	if s.completed >= s.maximum {
		return nil, nil
	}

	// Generate an operation, retrying if the selected kind isn't viable.
	for attempt := 0; attempt < maximumSelectionAttempts; attempt++ {
		operation := &Operation{
			Identifier: s.completed,
			Kind:       s.weights.choose(int(s.random.Float64() * 100)),
		}
		if s.populate(operation) {
			return operation, nil
		}
		s.logger.Tracef("Unable to generate %v operation, retrying", operation.Kind)
	}

	// Generation is stuck.
	return nil, errors.Errorf("unable to generate a viable operation after %d attempts", maximumSelectionAttempts)
}

// populate fills in the inputs of an operation. It returns false if the
// operation isn't viable in the current state.
func (s *sequence) populate(operation *Operation) bool {
	// Select a parent operation, if required.
	if operation.Kind.requiresDescriptor() {
		if operation.Parent = s.randomOpen(); operation.Parent == nil {
			return false
		}
	}

	// Populate kind-specific inputs.
	switch operation.Kind {
	case OperationKindCreate:
		operation.Mode = defaultMode
		operation.Path = s.randomPath(5, 5, 20)
	case OperationKindOpen:
		operation.Flags = randomOpenFlags(s.random)
		if operation.Flags&unix.O_CREAT != 0 {
			operation.Mode = defaultMode
		}
		operation.Path = s.randomPath(25, 65, 20)
	case OperationKindSeek:
		operation.Offset = int64(s.random.Intn(maximumSeekOffset))
		operation.Whence = []int{io.SeekStart, io.SeekCurrent, io.SeekEnd}[s.random.Intn(3)]
	case OperationKindRead:
		operation.Length = s.random.Intn(maximumTransferSize)
	case OperationKindWrite:
		operation.Data = make([]byte, s.random.Intn(maximumTransferSize))
		s.random.Read(operation.Data)
	case OperationKindClose:
	case OperationKindUnlink:
		operation.Path = s.randomPath(25, 65, 20)
	case OperationKindTruncate:
		operation.Path = s.randomPath(10, 70, 50)
		operation.Length = s.random.Intn(maximumTransferSize)
	case OperationKindFtruncate:
		operation.Length = s.random.Intn(maximumTransferSize)
	case OperationKindMkdir:
		operation.Mode = defaultMode
		operation.Path = s.randomPath(10, 10, 20)
	case OperationKindRmdir:
		operation.Path = s.randomPath(65, 15, 20)
	case OperationKindRename:
		if s.random.Intn(2) == 0 {
			operation.Path = s.randomNode(s.directories, 5, 75)
		} else {
			operation.Path = s.randomNode(s.files, 5, 75)
		}
		if operation.Path == "" {
			return false
		}
		operation.NewPath = path.Join(path.Dir(operation.Path), s.randomName())
	case OperationKindChdir:
		operation.Path = s.randomNode(s.directories, 3, 100)
		if operation.Path == s.workingPath {
			return false
		}
	default:
		panic("unhandled operation kind")
	}

	// Success.
	return true
}

// openWorkingDirectories ensures that working directory descriptors are open
// on both trees.
func (s *sequence) openWorkingDirectories() error {
	// Check if any work is necessary.
	if s.target.workingDirectory != -1 && s.reference.workingDirectory != -1 {
		return nil
	}

	// Close any working directory that's still open.
	s.closeWorkingDirectories()

	// Open the working directories.
	for _, t := range []*side{&s.target, &s.reference} {
		p := filepath.Join(t.root, s.workingPath)
		opened := sysraw.Open(p, workingDirectoryFlags, 0)
		if opened.Failed() {
			s.closeWorkingDirectories()
			return errors.Wrapf(opened.Errno, "unable to open working directory (%s)", p)
		}
		t.workingDirectory = int(opened.Return)
	}
	s.logger.Debugf("Opened working directory %q: target=%d reference=%d",
		s.workingPath, s.target.workingDirectory, s.reference.workingDirectory,
	)

	// Success.
	return nil
}

// closeWorkingDirectories closes any open working directory descriptors.
func (s *sequence) closeWorkingDirectories() {
	for _, t := range []*side{&s.target, &s.reference} {
		if t.workingDirectory != -1 {
			must.Succeed(sysraw.Close(t.workingDirectory).Err(),
				fmt.Sprintf("closing working directory descriptor %d", t.workingDirectory), s.logger)
			t.workingDirectory = -1
		}
	}
}

// execute performs an operation on both trees.
func (s *sequence) execute(operation *Operation) {
	// Compute the path relative to the working directory.
	relative := s.relativize(operation.Path)

	// Perform the operation on each tree.
	var targetParent, referenceParent *Outcome
	if operation.Parent != nil {
		targetParent = &operation.Parent.Target
		referenceParent = &operation.Parent.Reference
	}
	operation.Target = operation.perform(&s.target, relative, targetParent)
	operation.Reference = operation.perform(&s.reference, relative, referenceParent)
}

// record updates the sequence state after a successfully verified operation.
func (s *sequence) record(operation *Operation) {
	// Track completion.
	s.completed++

	// Failed operations don't change the state tracked here, with the
	// exception of chdir, whose descriptor updates have already happened.
	if operation.Reference.Errno != 0 {
		return
	}

	// Update state.
	switch operation.Kind {
	case OperationKindCreate, OperationKindOpen:
		if !s.directories[operation.Path] {
			s.files[operation.Path] = true
		}
		s.open = append(s.open, operation)
	case OperationKindClose:
		for i, o := range s.open {
			if o == operation.Parent {
				s.open = append(s.open[:i], s.open[i+1:]...)
				break
			}
		}
	case OperationKindUnlink:
		delete(s.files, operation.Path)
	case OperationKindMkdir:
		s.directories[operation.Path] = true
	case OperationKindRmdir:
		delete(s.directories, operation.Path)
		if hasPathPrefix(s.workingPath, operation.Path) {
			s.logger.Debugf("Working directory %q removed, resetting to root", s.workingPath)
			s.workingPath = ""
			s.closeWorkingDirectories()
		}
	case OperationKindRename:
		if operation.NewPath == operation.Path {
			break
		}
		s.files = movePaths(s.files, operation.Path, operation.NewPath)
		s.directories = movePaths(s.directories, operation.Path, operation.NewPath)
		if hasPathPrefix(s.workingPath, operation.Path) {
			previous := s.workingPath
			s.workingPath = operation.NewPath + s.workingPath[len(operation.Path):]
			s.logger.Debugf("Working directory moved from %q to %q", previous, s.workingPath)
		}
	case OperationKindChdir:
		s.workingPath = operation.Path
	}
}

// movePaths moves a path and all paths beneath it to a new location within a
// set. Paths already at the destination are replaced.
func movePaths(set map[string]bool, source, destination string) map[string]bool {
	result := make(map[string]bool, len(set))
	for p := range set {
		if hasPathPrefix(p, destination) && !hasPathPrefix(p, source) {
			continue
		} else if hasPathPrefix(p, source) {
			p = destination + p[len(source):]
		}
		result[p] = true
	}
	return result
}

// closeAll closes all open descriptors, including working directories.
func (s *sequence) closeAll() {
	for _, o := range s.open {
		for _, outcome := range []*Outcome{&o.Target, &o.Reference} {
			if outcome.Return >= 0 {
				must.Succeed(sysraw.Close(int(outcome.Return)).Err(),
					fmt.Sprintf("closing descriptor %d", outcome.Return), s.logger)
			}
		}
	}
	s.open = nil
	s.closeWorkingDirectories()
}
