// Package client is a small Go client for the admin API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Ready reports the server's bootstrap status ("booting" or "ready").
func (c *Client) Ready() (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.getJSON("/v1/status/ready", &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// TransferGroupLeadership asks the raft group's current leader to step down.
// target < 0 lets the consensus layer choose the new leader.
func (c *Client) TransferGroupLeadership(groupID int64, target int) error {
	path := fmt.Sprintf("/v1/raft/%d/transfer_leadership", groupID)
	if target >= 0 {
		path += "?target=" + strconv.Itoa(target)
	}
	return c.post(path, nil)
}

// TransferPartitionLeadership moves leadership of a kafka topic-partition.
func (c *Client) TransferPartitionLeadership(topic string, partition int, target int) error {
	path := fmt.Sprintf("/v1/kafka/%s/%d/transfer_leadership", url.PathEscape(topic), partition)
	if target >= 0 {
		path += "?target=" + strconv.Itoa(target)
	}
	return c.post(path, nil)
}

// Replica is one entry of a desired replica assignment.
type Replica struct {
	NodeID int `json:"node_id"`
	Core   int `json:"core"`
}

// SetPartitionReplicas submits a replica reassignment intent. A nil error
// means the intent was accepted, not that replicas have moved; poll
// GetPartition for convergence.
func (c *Client) SetPartitionReplicas(namespace, topic string, partition int, replicas []Replica) error {
	path := fmt.Sprintf("/v1/partitions/%s/%s/%d/replicas",
		url.PathEscape(namespace), url.PathEscape(topic), partition)
	return c.post(path, replicas)
}

// Partition is the detail view of one partition.
type Partition struct {
	Namespace   string    `json:"ns"`
	Topic       string    `json:"topic"`
	PartitionID int       `json:"partition_id"`
	Status      string    `json:"status"`
	Replicas    []Replica `json:"replicas"`
}

func (c *Client) GetPartition(namespace, topic string, partition int) (Partition, error) {
	var out Partition
	path := fmt.Sprintf("/v1/partitions/%s/%s/%d",
		url.PathEscape(namespace), url.PathEscape(topic), partition)
	err := c.getJSON(path, &out)
	return out, err
}

// PartitionSummary is one locally hosted partition in the listing.
type PartitionSummary struct {
	Namespace   string `json:"ns"`
	Topic       string `json:"topic"`
	PartitionID int    `json:"partition_id"`
	Core        int    `json:"core"`
}

func (c *Client) ListPartitions() ([]PartitionSummary, error) {
	var out []PartitionSummary
	err := c.getJSON("/v1/partitions", &out)
	return out, err
}

// Broker is one known cluster node.
type Broker struct {
	NodeID   int `json:"node_id"`
	NumCores int `json:"num_cores"`
}

func (c *Client) ListBrokers() ([]Broker, error) {
	var out []Broker
	err := c.getJSON("/v1/brokers", &out)
	return out, err
}

func (c *Client) CreateUser(username, algorithm, password string) error {
	return c.post("/v1/security/users", map[string]string{
		"username":  username,
		"algorithm": algorithm,
		"password":  password,
	})
}

func (c *Client) UpdateUser(username, algorithm, password string) error {
	body, err := json.Marshal(map[string]string{
		"algorithm": algorithm,
		"password":  password,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut,
		c.BaseURL+"/v1/security/users/"+url.PathEscape(username), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) DeleteUser(username string) error {
	req, err := http.NewRequest(http.MethodDelete,
		c.BaseURL+"/v1/security/users/"+url.PathEscape(username), nil)
	if err != nil {
		return err
	}
	return c.do(req)
}

func (c *Client) ListUsers() ([]string, error) {
	var out []string
	err := c.getJSON("/v1/security/users", &out)
	return out, err
}

func (c *Client) post(path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func (c *Client) getJSON(path string, out any) error {
	resp, err := c.http.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var errBody struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, errBody.Error)
	}
	return fmt.Errorf("%s: %s", resp.Status, string(body))
}
