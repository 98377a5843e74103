// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"github.com/pdiddy/any2md/internal/container"
)

// DefaultImage is the container image used for office and PDF conversion.
const DefaultImage = "markitdown:latest"

// ContainerConverter converts documents by piping them through a
// markitdown container image on an injected runtime.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter verifies the image exists locally in rt before
// returning the converter. An empty image selects DefaultImage.
func NewContainerConverter(rt container.Runtime, image string) (*ContainerConverter, error) {
	if image == "" {
		image = DefaultImage
	}
	if err := rt.HasImage(image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert opens the document named by uri and pipes it through the
// conversion image, returning the container's stdout.
func (c *ContainerConverter) Convert(uri string) (string, error) {
	path, err := PathFromFileURI(uri)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out, err := c.runtime.Pipe(c.image, f)
	if err != nil {
		return "", fmt.Errorf("piping %s through %s: %w", path, c.image, err)
	}
	return out, nil
}
