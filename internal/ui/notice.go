package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spigell/cvwizard/internal/utils"
)

// NoticeDuration is how long a transient notice stays on screen.
const NoticeDuration = 2 * time.Second

const clearLine = "\r\033[K"

// Notice prints msg on its own line and erases it after d. It blocks until
// the notice is gone or ctx is done.
func Notice(ctx context.Context, w io.Writer, msg string, d time.Duration) error {
	if _, err := fmt.Fprint(w, noticeStyle.Render(msg)); err != nil {
		return err
	}

	err := utils.WaitFor(ctx, d)
	fmt.Fprint(w, clearLine)

	return err
}
