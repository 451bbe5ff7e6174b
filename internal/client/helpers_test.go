package client_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/hmc-client/internal/client"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// entryXML builds one Atom entry carrying a payload of the given kind.
func entryXML(kind, uuid, etag, selfLink, payload string) string {
	var inner string

	if etag != "" {
		inner += fmt.Sprintf(`<etag:etag xmlns:etag="http://www.ibm.com/xmlns/systems/power/firmware/web/mc/2012_10/">%s</etag:etag>`, etag)
	}

	if selfLink != "" {
		inner += fmt.Sprintf(`<link rel="SELF" href="%s"/>`, selfLink)
	}

	return fmt.Sprintf(`<entry xmlns="http://www.w3.org/2005/Atom">
  <id>%s</id>
  %s
  <content type="application/vnd.ibm.powervm.uom+xml; type=%s">
    <ns:%s xmlns:ns="http://www.ibm.com/xmlns/systems/power/firmware/uom/mc/2012_10/">%s</ns:%s>
  </content>
</entry>`, uuid, inner, kind, kind, payload, kind)
}

func feedXML(entries ...string) string {
	feed := `<feed xmlns="http://www.w3.org/2005/Atom">`
	for _, entry := range entries {
		feed += entry
	}

	return feed + `</feed>`
}

// jobResponseXML builds a JobResponse entry in the given state, with the
// optional name/value result pairs.
func jobResponseXML(jobID, selfLink string, state hmc.JobState, results map[string]string) string {
	payload := fmt.Sprintf("<JobID>%s</JobID><Status>%s</Status>", jobID, state)

	if len(results) > 0 {
		payload += "<Results>"
		for name, value := range results {
			payload += fmt.Sprintf("<JobParameter><ParameterName>%s</ParameterName><ParameterValue>%s</ParameterValue></JobParameter>", name, value)
		}

		payload += "</Results>"
	}

	return entryXML("JobResponse", jobID, "", selfLink, payload)
}

// newTestClient builds a client against the given endpoint without a session
// manager, so handlers see plain unauthenticated requests.
func newTestClient(t *testing.T, endpoint string) *client.Client {
	t.Helper()

	c, err := client.NewWithSession(&hmc.Config{Endpoint: endpoint}, nil)
	require.NoError(t, err)

	return c
}
