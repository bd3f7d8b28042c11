package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	iotGrpc "liyu1981.xyz/sensor-alarm-service/pkg/grpc"
)

var maxSensors int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:1090"

var httpClient *resty.Client
var grpcClient iotGrpc.AlarmServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

type ruleCreated struct {
	ID uint `json:"id"`
}

func main() {
	sensorIDs := make([]string, maxSensors)
	for i := range maxSensors {
		sensorIDs[i] = uuid.NewString()
	}
	ruleIDs := make([]uint, maxSensors)
	fmt.Printf("generated %v sensor IDs\n", maxSensors)

	httpClient = resty.New().SetBaseURL("http://" + httpHostPort).SetTimeout(10 * time.Second)

	resp, err := httpClient.R().Get("/healthz")
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = iotGrpc.NewAlarmServiceClient(conn)

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxSensors {
		wg.Add(1)
		go func() {
			ruleIDs[i] = insertRule(sensorIDs[i])
			fmt.Printf("\rinserted rule for sensor %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rinserted rules for %v sensors: used time=%v seconds, throughput=%v action/second\n",
		maxSensors, usedTime.Seconds(), float64(maxSensors)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxSensors {
		wg.Add(1)
		go func() {
			doAction(sensorIDs[i], ruleIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v sensors: used time=%v seconds, throughput=%v action/second\n",
		maxSensors, usedTime.Seconds(), float64(maxSensors*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndSleep() {
	rndMu.Lock()
	d := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
	rndMu.Unlock()
	time.Sleep(d)
}

func insertRule(sensorID string) uint {
	rule := map[string]any{
		"name":              "bench " + sensorID,
		"sensor_id":         sensorID,
		"type":              "simple",
		"primary_threshold": rndFloat64(0.0, 100.0, 2),
		"duration":          rndFloat64(0.0, 1.0, 1),
		"topic":             "bench/" + sensorID,
	}

	if flipCoin() {
		var created ruleCreated
		resp, err := httpClient.R().SetBody(rule).SetResult(&created).Post("/rules")
		if err != nil || resp.StatusCode() != http.StatusCreated {
			panic(fmt.Sprintf("err: %v, resp: %v", err, resp))
		}
		return created.ID
	}

	req, err := structpb.NewStruct(rule)
	if err != nil {
		panic(err)
	}
	resp, err := grpcClient.AddRule(context.Background(), req)
	if err != nil || !resp.GetFields()["success"].GetBoolValue() {
		panic(fmt.Sprintf("err: %v, resp: %v", err, resp))
	}
	return uint(resp.GetFields()["id"].GetNumberValue())
}

func doAction(sensorID string, ruleID uint) {
	actions := []func(){
		genPostReadingAction(sensorID),
		genGetOccurrencesAction(ruleID),
		genPostReadingAction(sensorID),
	}
	actionNames := []string{
		"PostReading",
		"GetOccurrences",
		"PostReading",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for sensor %v", actionNames[index], sensorID)
		rndSleep()
	}
}

func genPostReadingAction(sensorID string) func() {
	return func() {
		value := rndFloat64(0.0, 100.0, 2)

		if flipCoin() {
			resp, err := httpClient.R().
				SetBody(map[string]float64{"value": value}).
				Post(fmt.Sprintf("/sensors/%s/readings", sensorID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.IsSuccess() {
				fmt.Printf("\nresponse status code = %v: %s\n", resp.StatusCode(), resp.Body())
			}
		} else {
			req, _ := structpb.NewStruct(map[string]any{"sensor_id": sensorID, "value": value})
			resp, err := grpcClient.PostReading(context.Background(), req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.GetFields()["success"].GetBoolValue() {
				fmt.Printf("\nresponse success = false: %v\n", resp)
			}
		}
	}
}

func genGetOccurrencesAction(ruleID uint) func() {
	return func() {
		if flipCoin() {
			resp, err := httpClient.R().Get(fmt.Sprintf("/rules/%d/occurrences", ruleID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if resp.StatusCode() != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp)
			}
		} else {
			req, _ := structpb.NewStruct(map[string]any{"rule_id": float64(ruleID)})
			resp, err := grpcClient.GetOccurrences(context.Background(), req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.GetFields()["success"].GetBoolValue() {
				fmt.Printf("\nresponse success = false: %v\n", resp)
			}
		}
	}
}
