package queue

import (
	"context"
	"io"
	"log"
	"math"
	"time"
)

// speedSampleEvery is the minimum interval between upload speed
// recomputations. Percent updates on every tick; speed updates this
// often so the readout does not flicker.
const speedSampleEvery = 500 * time.Millisecond

// UploadFunc streams one file to the daemon, invoking onProgress with
// the cumulative byte count as the body is consumed. Implemented by
// voidshell.Client.Upload.
type UploadFunc func(ctx context.Context, name string, r io.Reader, onProgress func(sent int64)) error

// File is one entry in an upload batch. Open is called when the file's
// turn comes, so a long batch does not hold every descriptor at once.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Progress is a point-in-time report for the file currently in flight.
// Percent is derived from cumulative bytes on every tick; Speed is the
// most recent sampled rate in bytes per second.
type Progress struct {
	Name    string
	Sent    int64
	Percent int
	Speed   float64
}

// Uploader pushes local files to the daemon one at a time. Files are
// processed strictly in the order given; a failed file is recorded and
// the batch continues with the next one.
type Uploader struct {
	upload UploadFunc

	// now is swappable for deterministic speed sampling in tests.
	now func() time.Time

	onProgress func(Progress)
	onSettled  func(Result)
}

// NewUploader returns an uploader dispatching through upload.
func NewUploader(upload UploadFunc) *Uploader {
	return &Uploader{upload: upload, now: time.Now}
}

// OnProgress registers the per-tick progress callback. Called from the
// upload goroutine.
func (u *Uploader) OnProgress(fn func(Progress)) { u.onProgress = fn }

// OnSettled registers a callback invoked once per file after its
// request settles, success or failure.
func (u *Uploader) OnSettled(fn func(Result)) { u.onSettled = fn }

// Start uploads the batch sequentially and returns per-file results.
// Cancellation between files stops the batch; a file already streaming
// is interrupted by its own request context.
func (u *Uploader) Start(ctx context.Context, files []File) []Result {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		err := u.uploadOne(ctx, f)
		if err != nil {
			log.Printf("upload %s failed: %v", f.Name, err)
		}
		res := Result{Path: f.Name, Err: err}
		results = append(results, res)
		if u.onSettled != nil {
			u.onSettled(res)
		}
	}
	return results
}

func (u *Uploader) uploadOne(ctx context.Context, f File) error {
	body, err := f.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	lastSample := u.now()
	var lastBytes int64
	var speed float64

	return u.upload(ctx, f.Name, body, func(sent int64) {
		if elapsed := u.now().Sub(lastSample); elapsed >= speedSampleEvery {
			speed = float64(sent-lastBytes) / elapsed.Seconds()
			lastSample = u.now()
			lastBytes = sent
		}
		if u.onProgress != nil {
			u.onProgress(Progress{
				Name:    f.Name,
				Sent:    sent,
				Percent: percentOf(sent, f.Size),
				Speed:   speed,
			})
		}
	})
}

// percentOf maps cumulative bytes to a rounded whole percentage.
func percentOf(sent, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(sent) / float64(total) * 100))
}
