package fetcher

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// DecodeJSONArray decodes a JSON array streaming, sending each element to a channel.
// Expects input in the form [...] with nothing after the closing bracket; an
// empty or truncated body is an error. Both channels are closed when
// processing completes.
func DecodeJSONArray[T any](ctx context.Context, r io.Reader) (<-chan T, <-chan error) {
	outCh := make(chan T, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(outCh)
		defer close(errCh)

		decoder := json.NewDecoder(r)

		tok, err := decoder.Token()
		if err != nil {
			errCh <- eris.Wrap(unexpectedEOF(err), "json: read opening token")
			return
		}

		delim, ok := tok.(json.Delim)
		if !ok || delim != '[' {
			errCh <- eris.Errorf("json: expected '[', got %v", tok)
			return
		}

		for decoder.More() {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}

			var item T
			if err := decoder.Decode(&item); err != nil {
				errCh <- eris.Wrap(err, "json: decode element")
				return
			}

			select {
			case outCh <- item:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}
		}

		tok, err = decoder.Token()
		if err != nil {
			errCh <- eris.Wrap(unexpectedEOF(err), "json: read closing token")
			return
		}
		if delim, ok := tok.(json.Delim); !ok || delim != ']' {
			errCh <- eris.Errorf("json: expected ']', got %v", tok)
			return
		}

		if tok, err := decoder.Token(); err != io.EOF {
			if err != nil {
				errCh <- eris.Wrap(err, "json: trailing data")
				return
			}
			errCh <- eris.Errorf("json: trailing data %v", tok)
		}
	}()

	return outCh, errCh
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadAll drains and closes body.
func ReadAll(body io.ReadCloser) ([]byte, error) {
	defer body.Close() //nolint:errcheck
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrap(err, "read body")
	}
	return data, nil
}
