package disasm

import (
	"context"
	"fmt"
	"os"
)

// ProcessFile disassembles the ROM into a newly created file. The file is
// closed on all paths, a close error is returned if processing succeeded.
func (dis *Disasm) ProcessFile(ctx context.Context, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file '%s': %w", path, closeErr)
		}
	}()

	return dis.Process(ctx, f)
}
