package queuevalues

// RankedSoloQueueId is the only queue the sync engine counts and stores.
const RankedSoloQueueId = 420

var RankedQueueValue = map[int]string{
	420: "RANKED_SOLO_5x5",
	440: "RANKED_FLEX_SR",
}

// QueueType is the league-v4 queue type string of the solo queue.
const RankedSoloQueueType = "RANKED_SOLO_5x5"
