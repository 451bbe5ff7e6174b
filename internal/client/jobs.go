package client

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/fivetwenty-io/hmc-client/internal/constants"
	"github.com/fivetwenty-io/hmc-client/pkg/hmc"
)

// JobsClient implements hmc.JobsClient.
type JobsClient struct {
	client *Client
}

// NewJobsClient creates a new jobs client.
func NewJobsClient(client *Client) *JobsClient {
	return &JobsClient{client: client}
}

// New implements hmc.JobsClient.New.
func (c *JobsClient) New(target, operation, group string, params map[string]string) hmc.Job {
	return &job{
		client:    c.client,
		target:    target,
		operation: operation,
		group:     group,
		params:    params,
	}
}

// Get implements hmc.JobsClient.Get.
func (c *JobsClient) Get(ctx context.Context, uuid string) (*hmc.JobStatus, error) {
	entity, err := c.client.getEntity(ctx, constants.UOMPath+"/jobs/"+uuid, hmc.KindJobResponse)
	if err != nil {
		return nil, err
	}

	return decodeJobStatus(entity), nil
}

// job drives one asynchronous remote operation. The poll location is set by
// Submit; the status snapshot and result mapping are populated by the first
// successful Poll.
type job struct {
	client    *Client
	target    string
	operation string
	group     string
	params    map[string]string

	location string
	status   *hmc.JobStatus
}

// Submit implements hmc.Job.Submit.
func (j *job) Submit(ctx context.Context) error {
	if j.location != "" {
		return hmc.ErrAlreadySubmitted
	}

	body := jobRequestBody(j.operation, j.group, j.params)
	contentType := constants.ContentTypeWeb + "; type=JobRequest"

	resp, err := j.client.httpClient.Put(ctx, j.target, contentType, body, nil)
	if err != nil {
		return fmt.Errorf("submitting job %s/%s: %w", j.group, j.operation, err)
	}

	entry, err := hmc.DecodeEntry(resp.Body)
	if err != nil {
		return err
	}

	accepted, err := hmc.ParseEntry(entry, hmc.KindJobResponse)
	if err != nil {
		return err
	}

	if accepted == nil || accepted.SelfLink() == "" {
		return &hmc.ProtocolError{
			Op:     "submitting job",
			Detail: "acceptance response carries no job location",
		}
	}

	j.location = accepted.SelfLink()

	return nil
}

// Poll implements hmc.Job.Poll.
func (j *job) Poll(ctx context.Context) (hmc.JobState, error) {
	if j.location == "" {
		return "", hmc.ErrNotSubmitted
	}

	entity, err := j.client.getEntity(ctx, j.location, hmc.KindJobResponse)
	if err != nil {
		return "", fmt.Errorf("polling job %s/%s: %w", j.group, j.operation, err)
	}

	j.status = decodeJobStatus(entity)

	return j.status.State, nil
}

// Wait implements hmc.Job.Wait. With the zero "auto" interval the poll gap
// starts at 1s and doubles per poll up to 30s; an explicit interval is used
// unchanged. A returned TIMEDOUT does not imply the remote operation
// stopped.
func (j *job) Wait(ctx context.Context, timeout, interval time.Duration) (hmc.JobState, error) {
	if j.location == "" {
		return "", hmc.ErrNotSubmitted
	}

	if timeout <= 0 {
		timeout = constants.DefaultJobTimeout
	}

	auto := interval == 0

	wait := interval
	if auto {
		wait = constants.JobPollInitial
	}

	deadline := time.Now().Add(timeout)

	for {
		if !time.Now().Before(deadline) {
			return hmc.JobStateTimedout, nil
		}

		state, err := j.Poll(ctx)
		if err != nil {
			return "", err
		}

		if !state.InProgress() {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("waiting for job %s/%s: %w", j.group, j.operation, ctx.Err())
		case <-time.After(wait):
		}

		if auto {
			wait *= 2
			if wait > constants.JobPollCeiling {
				wait = constants.JobPollCeiling
			}
		}
	}
}

// Release implements hmc.Job.Release.
func (j *job) Release(ctx context.Context) error {
	if j.location == "" {
		return hmc.ErrNotSubmitted
	}

	_, err := j.client.httpClient.Delete(ctx, j.location)
	if err != nil {
		return fmt.Errorf("releasing job %s/%s: %w", j.group, j.operation, err)
	}

	return nil
}

// Run implements hmc.Job.Run. Release executes on every exit path after a
// successful submit; its error is surfaced only when the run itself
// succeeded.
func (j *job) Run(ctx context.Context, timeout, interval time.Duration) (err error) {
	err = j.Submit(ctx)
	if err != nil {
		return err
	}

	defer func() {
		releaseErr := j.Release(ctx)
		if err == nil {
			err = releaseErr
		}
	}()

	state, err := j.Wait(ctx, timeout, interval)
	if err != nil {
		return err
	}

	if state != hmc.JobStateCompletedOK {
		failure := &hmc.JobFailedError{State: state}
		if j.status != nil {
			failure.Message = j.status.Message
			failure.Results = j.status.Results
		}

		return failure
	}

	return nil
}

// State implements hmc.Job.State.
func (j *job) State() hmc.JobState {
	if j.status == nil {
		return ""
	}

	return j.status.State
}

// Status implements hmc.Job.Status.
func (j *job) Status() *hmc.JobStatus {
	return j.status
}

// Results implements hmc.Job.Results.
func (j *job) Results() map[string]string {
	if j.status == nil {
		return nil
	}

	return j.status.Results
}

// jobRequestBody builds the submission document:
// RequestedOperation{OperationName, GroupName} plus the name/value parameter
// list.
func jobRequestBody(operation, group string, params map[string]string) []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("JobRequest")
	root.CreateAttr("schemaVersion", "V1_0")

	requested := root.CreateElement("RequestedOperation")
	requested.CreateAttr("schemaVersion", "V1_0")
	requested.CreateElement("OperationName").SetText(operation)
	requested.CreateElement("GroupName").SetText(group)

	parameters := root.CreateElement("JobParameters")
	parameters.CreateAttr("schemaVersion", "V1_0")

	for _, name := range sortedKeys(params) {
		parameter := parameters.CreateElement("JobParameter")
		parameter.CreateElement("ParameterName").SetText(name)
		parameter.CreateElement("ParameterValue").SetText(params[name])
	}

	data, _ := doc.WriteToBytes()

	return data
}

// decodeJobStatus extracts the status snapshot and result mapping from a
// JobResponse entity.
func decodeJobStatus(entity *hmc.Entity) *hmc.JobStatus {
	status := &hmc.JobStatus{
		Results: map[string]string{},
	}

	if jobID, ok := entity.Get("JobID"); ok {
		status.JobID = jobID
	}

	if state, ok := entity.Get("Status"); ok {
		status.State = hmc.JobState(state)
	}

	if message, ok := entity.Get("Message"); ok {
		status.Message = message
	}

	for _, parameter := range entity.Children("Results", hmc.KindJobParameter) {
		name, ok := parameter.Get("Name")
		if !ok || name == "" {
			continue
		}

		value, _ := parameter.Get("Value")
		status.Results[name] = value
	}

	return status
}
