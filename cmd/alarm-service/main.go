package main

import "liyu1981.xyz/sensor-alarm-service/cmd/alarm-service/cmd"

func main() {
	cmd.Execute()
}
