package bridge

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"time"

	_ "image/png"

	"candlecast/internal/inference"
	"candlecast/internal/storage"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ImageDownloader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Bridge runs one image job end to end: download the source, hand it to
// the model, push every output to the bucket. Any stage failure fails the
// whole job; there is no partial result.
type Bridge struct {
	tracer     trace.Tracer
	downloader ImageDownloader
	runner     inference.Runner
	store      storage.ObjectStore
}

func New(tracer trace.Tracer, downloader ImageDownloader, runner inference.Runner, store storage.ObjectStore) *Bridge {
	return &Bridge{
		tracer:     tracer,
		downloader: downloader,
		runner:     runner,
		store:      store,
	}
}

// Process returns the public URLs of the uploaded outputs, in model output
// order.
func (b *Bridge) Process(ctx context.Context, imageURL string) ([]string, error) {
	ctx, span := b.tracer.Start(ctx, "bridge.process")
	defer span.End()
	span.SetAttributes(attribute.String("image_url", imageURL))

	start := time.Now()
	raw, err := b.downloader.Fetch(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	log.Printf("download image time: %s", time.Since(start))

	start = time.Now()
	outputs, err := b.runner.Run(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}
	log.Printf("inference time: %s (%d images)", time.Since(start), len(outputs))

	start = time.Now()
	urls := make([]string, 0, len(outputs))
	for i, out := range outputs {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, out, nil); err != nil {
			return nil, fmt.Errorf("encode output %d: %w", i, err)
		}
		url, err := b.store.Put(ctx, fmt.Sprintf("out_%d.jpg", i), "image/jpeg", buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("upload output %d: %w", i, err)
		}
		urls = append(urls, url)
	}
	log.Printf("push image time: %s", time.Since(start))

	return urls, nil
}
