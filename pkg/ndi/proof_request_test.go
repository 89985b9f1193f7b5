package ndi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bdbl/loan-verification-api/pkg/core"
	"github.com/bdbl/loan-verification-api/pkg/formdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	called bool
	req    *http.Request
	resp   *http.Response
	err    error
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	f.called = true
	f.req = req
	return f.resp, f.err
}

func newNDIService(t *testing.T, ft *fakeTransport) NDIService {
	t.Helper()

	svc, err := New(&core.NDIConfig{
		BaseURL:    "https://ndi.test/v1",
		SchemaName: "foundational-id",
		WebhookURL: "https://loans.test/webhook",
	}, Options{
		HTTPClient: ft,
	})
	require.NoError(t, err)
	return svc
}

func TestNew_RequiresBaseURLAndSchema(t *testing.T) {
	_, err := New(&core.NDIConfig{SchemaName: "x"}, Options{})
	require.Error(t, err)

	_, err = New(&core.NDIConfig{BaseURL: "https://ndi.test"}, Options{})
	require.Error(t, err)

	_, err = New(nil, Options{})
	require.Error(t, err)
}

func TestCreateProofRequest_Success(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusCreated,
			Body: io.NopCloser(bytes.NewBufferString(`{
				"statusCode": 201,
				"data": {
					"proofRequestThreadId": "thread-123",
					"inviteURL": "https://ndi.test/invite/abc",
					"deepLinkURL": "ndi://verify/abc",
					"expiresAt": "2025-06-01T10:00:00Z"
				}
			}`)),
		},
	}

	svc := newNDIService(t, ft)

	out, err := svc.CreateProofRequest(context.Background())
	require.NoError(t, err)

	require.True(t, ft.called)
	require.Equal(t, http.MethodPost, ft.req.Method)
	require.Equal(t, "https://ndi.test/v1/proof-requests", ft.req.URL.String())
	require.Equal(t, "application/json", ft.req.Header.Get("Content-Type"))

	sent, err := io.ReadAll(ft.req.Body)
	require.NoError(t, err)
	var spec ProofRequestSpec
	require.NoError(t, json.Unmarshal(sent, &spec))
	require.Len(t, spec.RequestedAttributes, 1)
	assert.Equal(t, "foundational-id", spec.RequestedAttributes[0].SchemaName)
	assert.Equal(t, RequestedAttributeNames, spec.RequestedAttributes[0].Names)

	assert.Equal(t, "thread-123", out.ThreadID)
	assert.Equal(t, "https://ndi.test/invite/abc", out.InviteURL)
	assert.Equal(t, "ndi://verify/abc", out.DeepLinkURL)
	assert.Equal(t, 2025, out.ExpiresAt.Year())
}

func TestCreateProofRequest_UnparsableExpiry(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusCreated,
			Body: io.NopCloser(bytes.NewBufferString(`{
				"statusCode": 201,
				"data": {
					"proofRequestThreadId": "thread-123",
					"inviteURL": "https://ndi.test/invite/abc",
					"expiresAt": "not-a-timestamp"
				}
			}`)),
		},
	}

	svc := newNDIService(t, ft)

	out, err := svc.CreateProofRequest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "thread-123", out.ThreadID)
	assert.True(t, out.ExpiresAt.IsZero())
}

func TestSnippet_CutsAtRuneBoundary(t *testing.T) {
	body := append(bytes.Repeat([]byte("a"), maxErrBodyLogBytes-1), []byte("ཀཁག")...)

	s := snippet(body)

	assert.True(t, utf8.ValidString(s))
	assert.True(t, strings.HasSuffix(s, "..."))
}

func TestCreateProofRequest_MissingThreadID(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{"statusCode": 200, "data": {}}`)),
		},
	}

	svc := newNDIService(t, ft)

	_, err := svc.CreateProofRequest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing thread id")
}

func TestCreateProofRequest_Non2xx(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusBadGateway,
			Status:     "502 Bad Gateway",
			Body:       io.NopCloser(bytes.NewBufferString(`upstream down`)),
		},
	}

	svc := newNDIService(t, ft)

	_, err := svc.CreateProofRequest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestCheckStatus_Pending(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{"status": "in-progress"}`)),
		},
	}

	svc := newNDIService(t, ft)

	out, err := svc.CheckStatus(context.Background(), "thread-123")
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, ft.req.Method)
	require.Equal(t, "https://ndi.test/v1/proof-requests/thread-123", ft.req.URL.String())

	assert.Equal(t, StatusPending, out.Status)
	assert.Nil(t, out.Raw)
}

func TestCheckStatus_AcceptedMeansPending(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusAccepted,
			Body:       io.NopCloser(bytes.NewBufferString(``)),
		},
	}

	svc := newNDIService(t, ft)

	out, err := svc.CheckStatus(context.Background(), "thread-123")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, out.Status)
}

func TestCheckStatus_VerifiedCarriesRevealedAttributes(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Body: io.NopCloser(bytes.NewBufferString(`{
				"status": "proof_validated",
				"presentation": {
					"revealed_attrs": {
						"Full Name": [{"value": "Tashi Wangmo"}],
						"ID Number": {"raw": "11509001234"},
						"Gender": "F"
					}
				}
			}`)),
		},
	}

	svc := newNDIService(t, ft)

	out, err := svc.CheckStatus(context.Background(), "thread-123")
	require.NoError(t, err)

	require.Equal(t, StatusVerified, out.Status)
	require.NotNil(t, out.Raw)
	assert.Equal(t, "Tashi Wangmo", out.Raw["Full Name"])
	assert.Equal(t, "11509001234", out.Raw["ID Number"])
	assert.Equal(t, "F", out.Raw["Gender"])
}

func TestCheckStatus_FallsBackToVerificationResultField(t *testing.T) {
	ft := &fakeTransport{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(`{"verification_result": "declined"}`)),
		},
	}

	svc := newNDIService(t, ft)

	out, err := svc.CheckStatus(context.Background(), "thread-123")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Status)
}

func TestCheckStatus_RequiresThreadID(t *testing.T) {
	ft := &fakeTransport{}

	svc := newNDIService(t, ft)

	_, err := svc.CheckStatus(context.Background(), "")
	require.Error(t, err)
	assert.False(t, ft.called)
}

func TestRevealedAttributes_MappedThroughCredentialMapper(t *testing.T) {
	body := statusResponseBody{
		Presentation: map[string]any{
			"revealed_attrs": map[string]any{
				"Full Name":     []any{map[string]any{"value": "Tashi Wangmo"}},
				"Date of Birth": "21/04/1990",
			},
		},
	}

	data := MapCredential(body.revealedAttributes())

	assert.Equal(t, "Tashi Wangmo", data.Get(formdata.FieldApplicantName))
	assert.Equal(t, "1990-04-21", data.Get(formdata.FieldDateOfBirth))
}
