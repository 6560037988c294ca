package suite

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// HTTPClientFunc adapts a function to the bot SDK's HttpClient interface.
type HTTPClientFunc func(request *http.Request) (*http.Response, error)

func (f HTTPClientFunc) Do(request *http.Request) (*http.Response, error) {
	return f(request)
}

func ParseRequestBody(t *testing.T, request *http.Request) map[string]string {
	reader, err := request.MultipartReader()
	require.NoError(t, err)

	form := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		value, _ := io.ReadAll(part)
		form[part.FormName()] = string(value)
	}

	return form
}
