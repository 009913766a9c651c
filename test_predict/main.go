// Package main implements a client for the detection service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/instill-ai/detection-backend/pkg/constant"
	"github.com/instill-ai/detection-backend/pkg/datamodel"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "detection service address")
	bucket := flag.String("bucket", "images", "bucket holding the image")
	prefix := flag.String("prefix", "", "key prefix of the image")
	fileName := flag.String("file", "", "image file name")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	results, requestID, err := invoke(ctx, *addr, &datamodel.DetectionRequest{
		Bucket:    *bucket,
		KeyPrefix: *prefix,
		ObjectKey: *fileName,
	})
	if err != nil {
		log.Fatalf("invocation failed: %v", err)
	}

	fmt.Printf("request %s: %d detections\n", requestID, len(results))
	for _, r := range results {
		fmt.Printf("%-20s %s [%s %s %s %s]\n", r.Class, r.Confidence, r.YMin, r.XMin, r.YMax, r.XMax)
	}
}

func invoke(ctx context.Context, addr string, req *datamodel.DetectionRequest) ([]datamodel.DetectionResult, string, error) {
	var results []datamodel.DetectionResult

	resp, err := resty.New().
		SetBaseURL(addr).
		R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&results).
		Post("/invocations")
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to reach the detection service")
	}

	requestID := resp.Header().Get(constant.HeaderRequestIDKey)
	if resp.StatusCode() != http.StatusOK {
		return nil, requestID, errors.Errorf("status %d: %s", resp.StatusCode(), resp.String())
	}

	return results, requestID, nil
}
